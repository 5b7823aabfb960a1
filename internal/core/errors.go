package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeUserNotFound    = "no_such_user"
	ErrCodeChannelNotFound = "no_such_channel"
	ErrCodeChannelExists   = "channel_already_exists"
	ErrCodeNameInUse       = "name_already_in_use"
	ErrCodeInvalidName     = "invalid_name"
	ErrCodeAlreadyJoined   = "already_joined"
	ErrCodeNotInChannel    = "user_not_in_channel"
	ErrCodeNotOwner        = "user_not_owner"
	ErrCodeInviteOnly      = "join_private_channel"
	ErrCodeNotInviteOnly   = "not_on_private_channel"
	ErrCodeBadRequest      = "bad_request"
)

var (
	ErrUserNotFound    = errors.New("no such user")
	ErrChannelNotFound = errors.New("no such channel")
	ErrChannelExists   = errors.New("channel already exists")
	ErrNameInUse       = errors.New("name already in use")
	ErrInvalidName     = errors.New("invalid name")
	ErrAlreadyJoined   = errors.New("already joined")
	ErrNotInChannel    = errors.New("user not in channel")
	ErrNotOwner        = errors.New("user is not the channel owner")
	ErrInviteOnly      = errors.New("channel is invite only")
	ErrNotInviteOnly   = errors.New("channel is not invite only")
	ErrBadRequest      = errors.New("bad request")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrUserNotFound, ErrCodeUserNotFound},
	{ErrChannelNotFound, ErrCodeChannelNotFound},
	{ErrChannelExists, ErrCodeChannelExists},
	{ErrNameInUse, ErrCodeNameInUse},
	{ErrInvalidName, ErrCodeInvalidName},
	{ErrAlreadyJoined, ErrCodeAlreadyJoined},
	{ErrNotInChannel, ErrCodeNotInChannel},
	{ErrNotOwner, ErrCodeNotOwner},
	{ErrInviteOnly, ErrCodeInviteOnly},
	{ErrNotInviteOnly, ErrCodeNotInviteOnly},
	{ErrBadRequest, ErrCodeBadRequest},
}

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// CodeOf maps a domain error to its wire code. Unknown errors map to ErrCodeBadRequest.
func CodeOf(err error) string {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ErrCodeBadRequest
}

// AsCoreError converts any error into a CoreError suitable for the wire.
func AsCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	return coreError(CodeOf(err), err.Error())
}
