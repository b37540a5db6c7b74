package server

import (
	"github.com/bytedance/sonic"
)

// jsonAPI keeps numbers as json.Number so property values survive
// stringification without float rounding.
var jsonAPI = sonic.Config{
	UseNumber:  true,
	EscapeHTML: true,
}.Froze()
