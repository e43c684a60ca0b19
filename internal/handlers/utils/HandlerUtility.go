package utils

import (
	"fmt"
	"net/http"
)

func GetIPAddress(r *http.Request) string {
    // Get IP from X-Forwarded-For header if behind proxy
    if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
        return ip
    }
    return r.RemoteAddr
}

// NormalizeSurveyIDs accepts either a single survey id string or a list
// of id strings and returns them as a slice.
func NormalizeSurveyIDs(raw interface{}) ([]string, error) {
    switch value := raw.(type) {
    case string:
        if value == "" {
            return nil, fmt.Errorf("surveyIds cannot be empty")
        }
        return []string{value}, nil

    case []interface{}:
        if len(value) == 0 {
            return nil, fmt.Errorf("surveyIds cannot be empty")
        }

        ids := make([]string, 0, len(value))
        for _, item := range value {
            id, ok := item.(string)
            if !ok || id == "" {
                return nil, fmt.Errorf("surveyIds must contain non-empty strings")
            }
            ids = append(ids, id)
        }
        return ids, nil

    default:
        return nil, fmt.Errorf("surveyIds must be a string or a list of strings")
    }
}
