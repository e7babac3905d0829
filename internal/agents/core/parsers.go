package core

import (
	"github.com/josephgoksu/codecrew/internal/utils"
)

// ParseJSONResponse extracts JSON from LLM response and unmarshals it.
func ParseJSONResponse[T any](response string) (T, error) {
	return utils.ExtractAndParseJSON[T](response)
}
