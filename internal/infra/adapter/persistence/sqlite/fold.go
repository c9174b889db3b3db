package sqlite

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	msqlite "modernc.org/sqlite"
)

// foldFunc is the SQL name of the Unicode case-folding scalar.
// SQLite's built-in lower() and LIKE only fold ASCII.
const foldFunc = "wp_casefold"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, casefold)
}

// Fold returns the Unicode case fold of s, as applied to titles by SearchTitles.
func Fold(s string) string {
	// Caser は状態を持つので呼び出しごとに作る
	return cases.Fold().String(s)
}

func casefold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", foldFunc, v)
	}
}
