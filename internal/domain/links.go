package domain

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// Link paths served by the web front end.
const (
	VerifyPath      = "/verify"
	UnsubscribePath = "/unsubscribe"
)

// EncodeEmailParam encodes an email for use in a link query parameter.
func EncodeEmailParam(email string) string {
	return base64.StdEncoding.EncodeToString([]byte(email))
}

// DecodeEmailParam reverses EncodeEmailParam. A '+' turned into a space by
// form decoding is restored first.
func DecodeEmailParam(param string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(param, " ", "+"))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyURL builds the link that confirms a pending subscription.
func VerifyURL(baseURL, email, code string) string {
	q := url.Values{}
	q.Set("email", EncodeEmailParam(email))
	q.Set("code", code)
	return strings.TrimRight(baseURL, "/") + VerifyPath + "?" + q.Encode()
}

// UnsubscribeURL builds the link that removes a confirmed subscriber.
func UnsubscribeURL(baseURL, email string) string {
	q := url.Values{}
	q.Set("email", EncodeEmailParam(email))
	return strings.TrimRight(baseURL, "/") + UnsubscribePath + "?" + q.Encode()
}
