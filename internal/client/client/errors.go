package client

import (
	"fmt"

	"github.com/dmitrijs2005/acadmate/internal/common"
)

var (
	ErrNotConfigured = fmt.Errorf("%w: GEMINI_API_KEY is not set", common.ErrExternalServiceUnavailable)
	ErrUnavailable   = fmt.Errorf("%w: chat service unavailable", common.ErrExternalOperationFailed)
	ErrUnauthorized  = fmt.Errorf("%w: chat service rejected the API key", common.ErrExternalOperationFailed)
	ErrBadResponse   = fmt.Errorf("%w: unexpected chat service response", common.ErrExternalOperationFailed)
)
