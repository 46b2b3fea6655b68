package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ImportReportMailData struct {
	PositionName     string   `json:"positionName"`
	Status           string   `json:"status"`
	RecordsProcessed int      `json:"recordsProcessed"`
	Errors           []string `json:"errors"`
	Warnings         []string `json:"warnings"`
}
