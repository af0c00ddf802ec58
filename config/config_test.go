package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	k, v := split("DATABASE_URL=postgres://u:p@h/db?sslmode=disable")
	assert.Equal(t, "DATABASE_URL", k)
	assert.Equal(t, "postgres://u:p@h/db?sslmode=disable", v)

	k, v = split("EMPTY")
	assert.Equal(t, "EMPTY", k)
	assert.Equal(t, "", v)
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":   "9000",
		"BAD":    "x",
		"STRICT": "true",
		"BLANK":  "",
		"LIST":   " a, ,b ,",
	}

	assert.Equal(t, "9000", GetString(c, "PORT", "8080"))
	assert.Equal(t, "dflt", GetString(c, "BLANK", "dflt"))
	assert.Equal(t, "dflt", GetString(nil, "PORT", "dflt"))

	assert.Equal(t, 9000, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "STRICT", false))
	assert.False(t, GetBool(c, "BAD", false))
	assert.True(t, GetBool(c, "MISSING", true))

	assert.Equal(t, []string{"a", "b"}, GetList(c, "LIST"))
	assert.Empty(t, GetList(c, "MISSING"))
}

func TestDatabaseURL(t *testing.T) {
	assert.Equal(t, "postgres://x", DatabaseURL(map[string]string{"DATABASE_URL": "postgres://x"}))

	dsn := DatabaseURL(map[string]string{
		"DB_HOST":     "db.internal",
		"DB_USER":     "blog",
		"DB_PASSWORD": "pw",
		"DB_SSLMODE":  "require",
	})
	assert.Equal(t, "host=db.internal port=5432 user=blog password=pw dbname=blog sslmode=require", dsn)
}
