package payment

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const checkMacValueField = "CheckMacValue"

// dotnetEscapes undoes the characters that Go escapes but the .NET UrlEncode used by ECPay keeps
var dotnetEscapes = strings.NewReplacer(
	"%2d", "-",
	"%5f", "_",
	"%2e", ".",
	"%21", "!",
	"%2a", "*",
	"%28", "(",
	"%29", ")",
)

// CheckMacValue computes ECPay's SHA256 signature of params.
// The CheckMacValue field itself is ignored.
func CheckMacValue(params map[string]string, hashKey, hashIV string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key != checkMacValueField {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	var b strings.Builder
	b.WriteString("HashKey=")
	b.WriteString(hashKey)
	for _, key := range keys {
		b.WriteString("&")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(params[key])
	}
	b.WriteString("&HashIV=")
	b.WriteString(hashIV)

	encoded := strings.ToLower(url.QueryEscape(b.String()))
	encoded = strings.ReplaceAll(dotnetEscapes.Replace(encoded), "~", "%7e")

	sum := sha256.Sum256([]byte(encoded))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// verifyCheckMacValue compares the received signature case-insensitively in constant time
func verifyCheckMacValue(params map[string]string, hashKey, hashIV string) bool {
	received := params[checkMacValueField]
	if received == "" {
		return false
	}
	want := CheckMacValue(params, hashKey, hashIV)
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(received)), []byte(want)) == 1
}

func flatten(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}
