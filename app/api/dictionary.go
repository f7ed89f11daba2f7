package api

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/rbhz/dictionary-lookup/app/session"
	"github.com/rs/zerolog/log"
)

const (
	modeCookie     = "mode"
	msgUnknownMode = "Unable to determine current mode"
)

// dictionaryService implements page and JSON lookup handlers
type dictionaryService struct {
	sessions *session.Manager
}

// session returns session stored in context by SessionCtx
func (d dictionaryService) session(r *http.Request) (*session.Session, bool) {
	id, ok := r.Context().Value(ctxSessionKey).(string)
	if !ok || id == "" {
		log.Error().Interface("session", r.Context().Value(ctxSessionKey)).Msg("invalid session id in context")
		return nil, false
	}
	return d.sessions.Get(id), true
}

// Page renders current session display
func (d dictionaryService) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := d.session(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	d.renderPage(w, r, "", sess.Display())
}

// Lookup submits word from the form and renders the result
func (d dictionaryService) Lookup(w http.ResponseWriter, r *http.Request) {
	sess, ok := d.session(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	word := r.FormValue("word")
	display, err := sess.Submit(r.Context(), word)
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("session", sess.ID()).Str("word", word).Msg("failed to display lookup")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	d.renderPage(w, r, word, display)
}

// ToggleMode switches between light and dark mode
func (d dictionaryService) ToggleMode(w http.ResponseWriter, r *http.Request) {
	current := modeLight
	if cookie, err := r.Cookie(modeCookie); err == nil {
		current = cookie.Value
	}
	var next string
	switch current {
	case modeLight:
		next = modeDark
	case modeDark:
		next = modeLight
	default:
		sess, ok := d.session(r)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		display, err := sess.ShowError(msgUnknownMode)
		if err != nil {
			log.Error().Err(err).Str("session", sess.ID()).Msg("failed to display mode error")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		d.renderPage(w, r, "", display)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: modeCookie, Value: next, Path: "/", SameSite: http.SameSiteLaxMode})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LookupJSON submits word and returns display regions as JSON
func (d dictionaryService) LookupJSON(w http.ResponseWriter, r *http.Request) {
	sess, ok := d.session(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	word := r.URL.Query().Get("word")
	display, err := sess.Submit(r.Context(), word)
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			w.WriteHeader(http.StatusConflict)
			if _, err := w.Write([]byte(`{"error":"superseded"}`)); err != nil {
				log.Warn().Err(err).Msg("failed to write response")
			}
			return
		}
		log.Error().Err(err).Str("session", sess.ID()).Str("word", word).Msg("failed to display lookup")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, display)
}

// History returns session history
func (d dictionaryService) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := d.session(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	words, err := sess.History()
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID()).Msg("failed to get session history")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, words)
}

func (d dictionaryService) renderPage(w http.ResponseWriter, r *http.Request, word string, display session.Display) {
	mode := modeLight
	if cookie, err := r.Cookie(modeCookie); err == nil && cookie.Value == modeDark {
		mode = modeDark
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{
		Mode: mode,
		Word: word,
		// produced by view.Render and the highlighter, text is escaped there
		Definitions: template.HTML(display.Definitions),
		Error:       template.HTML(display.Error),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	response, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
