package dto

type SummaryRow struct {
	ServiceID uint   `json:"serviceId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Total     int    `json:"total"`
}

type SummaryResult struct {
	Rows       []SummaryRow `json:"rows"`
	GrandTotal int          `json:"grandTotal"`
}
