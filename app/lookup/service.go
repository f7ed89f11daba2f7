package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rs/zerolog/log"
)

// Fetcher fetches raw entries for a term
type Fetcher interface {
	Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)
}

// Service looks words up and returns normalized entries
type Service struct {
	fetcher Fetcher
}

// Lookup returns first entry for the term. Every error returned is a *Failure.
func (s *Service) Lookup(ctx context.Context, term string) (Entry, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return Entry{}, &Failure{Kind: KindEmptyInput}
	}
	items, err := s.fetcher.Get(ctx, term)
	if err != nil {
		var apiErr *dictionaryapi.APIError
		if errors.As(err, &apiErr) {
			info := ErrorInfo{Title: apiErr.Title, Message: apiErr.Message, Resolution: apiErr.Resolution}
			switch {
			case info.Title == "":
				return Entry{}, &Failure{Kind: KindUndetermined, Info: info, Err: err}
			case errors.Is(err, dictionaryapi.ErrNotFound):
				return Entry{}, &Failure{Kind: KindNotFound, Info: info, Err: err}
			}
			log.Warn().Err(err).Str("word", term).Msg("dictionary service error")
			return Entry{}, &Failure{Kind: KindServiceError, Info: info, Err: err}
		}
		if !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("word", term).Msg("failed to fetch dictionary entries")
		}
		return Entry{}, &Failure{Kind: KindUnreachable, Err: err}
	}
	if len(items) == 0 {
		return Entry{}, &Failure{Kind: KindNotFound, Info: ErrorInfo{Title: MessageNotFound}}
	}
	if items[0].Word == "" {
		return Entry{}, &Failure{Kind: KindUnreachable, Err: fmt.Errorf("entry for %q has no word", term)}
	}
	return Normalize(items[0]), nil
}

// NewService creates Service using given fetcher
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}
