package adminsetting

import "time"

// AdminSettings is the single row of seller details used in customer messages.
type AdminSettings struct {
	SMSSenderPhone string     `json:"smsSenderPhone"`
	BusinessName   string     `json:"businessName"`
	BankName       string     `json:"bankName"`
	BankAccount    string     `json:"bankAccount"`
	AccountHolder  string     `json:"accountHolder"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

// BankLine renders the transfer destination, e.g. "농협 123-4567-8901 (홍길동)".
func (a AdminSettings) BankLine() string {
	line := a.BankName
	if a.BankAccount != "" {
		if line != "" {
			line += " "
		}
		line += a.BankAccount
	}
	if a.AccountHolder != "" {
		line += " (" + a.AccountHolder + ")"
	}
	return line
}
