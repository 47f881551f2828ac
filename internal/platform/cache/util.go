package cache

import "strings"

// safeReplacer removes characters that have meaning in Redis key patterns.
var safeReplacer = strings.NewReplacer(":", "_", "*", "_", "?", "_", "[", "_", "]", "_", " ", "_")

// safe はユーザー入力由来の値をキーに埋め込める形に正規化します。
func safe(s string) string {
	return safeReplacer.Replace(s)
}
