package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
)

// describeError renders err the way a person at the terminal wants to read it.
func describeError(err error) string {
	if apiErr, ok := apperrors.AsAPIError(err); ok {
		msg := describeAPIError(apiErr)
		if apperrors.IsUnauthorized(err) {
			msg += "; check the email and password"
		}
		return msg
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		if appErr.Field != "" {
			return fmt.Sprintf("%s. %s: %s", domainauth.MsgValidationError, appErr.Field, appErr.Message)
		}
	case apperrors.ErrCodeTimeout:
		return appErr.Message + " (timed out)"
	case apperrors.ErrCodeCanceled:
		return appErr.Message + " (canceled)"
	}
	return err.Error()
}

func describeAPIError(apiErr *apperrors.APIError) string {
	switch {
	case apiErr.Responded():
		return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	case apiErr.NoResponse():
		return apiErr.Message + " (no response from server)"
	case apiErr.RequestFailed():
		return apiErr.Message + " (request not sent)"
	default:
		return apiErr.Message
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// prompt writes label and reads one line from r.
func prompt(r io.Reader, w io.Writer, label string) (string, error) {
	if err := writef(w, "%s", label); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
