package model

// TokenTransfer is a decoded ERC20 Transfer observed in a step receipt.
type TokenTransfer struct {
	Token  string `json:"token"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}
