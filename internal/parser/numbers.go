package parser

import "strconv"

func parseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloatLiteral(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
