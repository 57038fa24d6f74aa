// Package client contains the external collaborators the AcadMate CLI talks
// to over the network.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic chat contract (see ChatClient and Chat): start a
//     conversation with a system prompt, then send messages and receive the
//     reply as a stream of text chunks.
//  2. A concrete Gemini implementation (see GeminiClient) that calls the
//     streamGenerateContent REST endpoint with server-sent events, keeps the
//     conversation history per chat and maps HTTP failures to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrNotConfigured, ErrUnavailable, ErrUnauthorized, ErrBadResponse.
// All of them except ErrNotConfigured wrap common.ErrExternalOperationFailed.
//
// Concurrency & Contexts
//
// A Chat serialises its sends. Streams honour context cancellation; breaking
// out of the range loop closes the underlying response.
package client
