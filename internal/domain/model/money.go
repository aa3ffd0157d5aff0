package model

import "github.com/shopspring/decimal"

func init() {
	// APIは金額を数値で返す（文字列にしない）
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatMoneyは画面表示用に "$39.98" の形にする
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
