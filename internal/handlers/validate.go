package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits matching the column widths of the underlying tables.
// bcrypt truncates input beyond 72 bytes, hence the password cap.
const (
	maxUsernameLen = 100
	maxPasswordLen = 72
	maxNameLen     = 70
	maxTitleLen    = 70
	maxBodyLen     = 500
)

// validateCredentials checks register/sign inputs and returns the first
// error found, or "" when valid.
func validateCredentials(username, password string) string {
	if strings.TrimSpace(username) == "" {
		return "username is required"
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "username is too long (max 100 characters)"
	}
	if password == "" {
		return "password is required"
	}
	if len(password) > maxPasswordLen {
		return "password is too long (max 72 bytes)"
	}
	return ""
}

// validateName checks a category or subcategory display name.
func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 70 characters)"
	}
	return ""
}

// validatePost checks post creation inputs, including the optional category
// and subcategory names that may be auto-created from them.
func validatePost(title, body, category string, subcategories []string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 70 characters)"
	}
	if strings.TrimSpace(body) == "" {
		return "body is required"
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "body is too long (max 500 characters)"
	}
	if utf8.RuneCountInString(category) > maxNameLen {
		return "category is too long (max 70 characters)"
	}
	for _, sc := range subcategories {
		if strings.TrimSpace(sc) == "" {
			return "subcategory names must not be empty"
		}
		if utf8.RuneCountInString(sc) > maxNameLen {
			return "subcategory is too long (max 70 characters)"
		}
	}
	return ""
}
