package model

// Balance is a token holding read after a run.
type Balance struct {
	Holder  string `json:"holder"`
	Account string `json:"account"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}
