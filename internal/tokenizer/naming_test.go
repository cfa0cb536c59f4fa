package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSnakeCase(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"get_user_name", true},
		{"load_config", true},
		{"hello", true},
		// Chữ số nằm trong từ không phá vỡ dạng snake_case
		{"md5_hash", true},
		{"base64_encode", true},
		{"area51", true},
		{"fooBarBaz", false},
		{"Foo_Bar", false},
		{"GetUserName", false},
		{"foo-bar", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsSnakeCase(tc.name), tc.name)
	}
}

func TestIsCamelCase(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"fooBarBaz", true},
		{"getUserName", true},
		{"getMd5Hash", true},
		{"hello", true},
		{"get_user_name", false},
		{"Foo_Bar", false},
		{"XMLParser", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsCamelCase(tc.name), tc.name)
	}
}

func TestSnakeSplit(t *testing.T) {
	assert.Equal(t, []string{"get", "user", "name"}, SnakeSplit("get_user_name"))
	assert.Equal(t, []string{"load", "config"}, SnakeSplit("load_config"))
	assert.Equal(t, []string{"md5", "hash"}, SnakeSplit("md5_hash"))
	// Các đoạn rỗng do underscore liền nhau hoặc ở biên bị loại bỏ
	assert.Equal(t, []string{"private", "helper"}, SnakeSplit("__private__helper_"))
	assert.Equal(t, []string{"hello"}, SnakeSplit("hello"))
}

func TestCamelSplit(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar", "baz"}, CamelSplit("fooBarBaz"))
	assert.Equal(t, []string{"xml", "parser"}, CamelSplit("XMLParser"))
	assert.Equal(t, []string{"get", "url"}, CamelSplit("getURL"))
	assert.Equal(t, []string{"hello"}, CamelSplit("hello"))
	assert.Nil(t, CamelSplit(""))
}
