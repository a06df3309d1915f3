package models

// AssetBalance is one non-zero exchange balance valued in USD.
type AssetBalance struct {
	Asset    string  `json:"asset"`
	Free     float64 `json:"free"`
	Locked   float64 `json:"locked"`
	Total    float64 `json:"total"`
	USDPrice float64 `json:"usd_price"`
	USDValue float64 `json:"usd_value"`
}

// Portfolio is a valued snapshot of the exchange account. Not persisted.
type Portfolio struct {
	AccountType   string         `json:"account_type"`
	CanTrade      bool           `json:"can_trade"`
	CanWithdraw   bool           `json:"can_withdraw"`
	CanDeposit    bool           `json:"can_deposit"`
	Balances      []AssetBalance `json:"balances"`
	TotalUSDValue float64        `json:"total_usd_value"`
}
