package devenv

// HiscoresTestConfig drives the opt-in live hiscores tests under
// dev/.state/hiscores.json5. Tests skip when it is absent.
type HiscoresTestConfig struct {
	Player string `json:"player"`
	Mode   string `json:"mode"`
}

// PricesTestConfig drives the opt-in live prices tests under
// dev/.state/prices.json5. Tests skip when it is absent.
type PricesTestConfig struct {
	UserAgent string `json:"user_agent"`
	ItemID    int    `json:"item_id"`
}
