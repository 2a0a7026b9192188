// Package slogx has slog attribute constructors for the keys used across the application.
package slogx

import (
	"log/slog"
	"time"
)

// ErrorKey is the attribute key used by [Error].
const ErrorKey = "error"

// Error returns an attribute for err. A nil err yields an empty attribute, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Wallet is the attribute used to tag a log line with a wallet address.
func Wallet(address string) slog.Attr { return slog.String("wallet", address) }
