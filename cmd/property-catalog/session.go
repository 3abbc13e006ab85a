package main

import (
	"context"
	"errors"
	"os"
	"property-catalog/internal"
	"property-catalog/internal/core/apierr"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// session - приложение, собранное для одной CLI-команды.
type session struct {
	app     *internal.App
	printer *message.Printer

	mu      sync.Mutex
	lastErr *apierr.APIError
}

func newSession(cmd *cobra.Command) (*session, error) {
	s := &session{printer: newPrinter(locale)}

	app, err := internal.NewApp(internal.Options{
		EnvPath:   envPath,
		LogWriter: os.Stderr,
		LogLevel:  logLevel,
		OnSuccess: func(msg string) {
			cmd.PrintErrln(msg)
		},
		OnError: func(err *apierr.APIError) {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		},
	})
	if err != nil {
		return nil, err
	}
	s.app = app
	return s, nil
}

func (s *session) context(cmd *cobra.Command) context.Context {
	return s.app.Context(cmd.Context())
}

// takeError возвращает ошибку, о которой контроллер сообщил через OnError.
func (s *session) takeError() *apierr.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.lastErr
	s.lastErr = nil
	return err
}

func (s *session) Close() {
	s.app.Close()
}

func newPrinter(tag string) *message.Printer {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return message.NewPrinter(lang)
}

// userError превращает ошибку API в текст для терминала, включая ошибки полей.
func userError(err error) error {
	if err == nil {
		return nil
	}
	apiErr := apierr.Parse(err)
	msg := apierr.UserFriendlyMessage(apiErr)
	if details := formatFieldErrors(apiErr.Errors); details != "" {
		msg += "\n" + details
	}
	return errors.New(msg)
}
