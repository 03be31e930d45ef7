// Package money 金额在系统内部统一使用int64分存储，对外接口使用两位小数
package money

import (
	"github.com/shopspring/decimal"
)

// Tolerance 客户端金额与服务端计算结果允许的误差（0.01元）
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

func init() {
	// JSON中金额输出为数字（12.34），而不是带引号的字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// FromDecimal 元 → 分，四舍五入到分
func FromDecimal(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// ToDecimal 分 → 元
func ToDecimal(fen int64) decimal.Decimal {
	return decimal.New(fen, -2)
}

// Format 分 → "12.34"
func Format(fen int64) string {
	return ToDecimal(fen).StringFixed(2)
}

// Parse "12.34" → 分
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d), nil
}

// WithinTolerance 判断客户端提交的金额是否与服务端计算结果一致
func WithinTolerance(expected decimal.Decimal, computedFen int64) bool {
	return expected.Sub(ToDecimal(computedFen)).Abs().LessThanOrEqual(Tolerance)
}
