package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinema-checkout-cli/model"
)

const (
	concessionCacheTTL = 30 * time.Minute
	maxRecentSessions  = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentSession is one entry of the checkout history shown on launch.
type RecentSession struct {
	SessionID int64     `json:"session_id"`
	Film      string    `json:"film"`
	Cinema    string    `json:"cinema"`
	StartTime time.Time `json:"start_time"`
}

type sessionHistory struct {
	Sessions []RecentSession `json:"sessions"`
}

// Profile is the locally stored account: the API token obtained at login
// and the loyalty balance reported with it. A zero Profile means nobody is
// signed in.
type Profile struct {
	Token string  `json:"token"`
	Name  string  `json:"name"`
	Bonus float64 `json:"bonus_balance"`
}

// Authenticated reports whether a usable token is stored.
func (p Profile) Authenticated() bool {
	return strings.TrimSpace(p.Token) != ""
}

// BonusBalance returns the loyalty balance available for redemption.
func (p Profile) BonusBalance() float64 {
	if p.Bonus < 0 {
		return 0
	}
	return p.Bonus
}

func LoadProfile() (Profile, error) {
	path, err := configPath("profile.json")
	if err != nil {
		return Profile{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, err
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, errors.New("invalid profile format")
	}
	return profile, nil
}

func SaveProfile(profile Profile) error {
	path, err := configPath("profile.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func LoadConcessionCache(cinemaID int64) ([]model.Concession, bool, error) {
	path, err := cachePath(concessionCacheName(cinemaID))
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Concession](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= concessionCacheTTL, nil
}

func SaveConcessionCache(cinemaID int64, items []model.Concession) error {
	path, err := cachePath(concessionCacheName(cinemaID))
	if err != nil {
		return err
	}
	return saveCache(path, items)
}

func concessionCacheName(cinemaID int64) string {
	if cinemaID <= 0 {
		return "concessions_all.json"
	}
	return fmt.Sprintf("concessions_%d.json", cinemaID)
}

func LoadRecentSessions() ([]RecentSession, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history sessionHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid session history format")
	}
	return history.Sessions, nil
}

// RememberSession puts the screening at the head of the history, dropping
// duplicates and anything beyond the cap.
func RememberSession(session model.Session) error {
	history, _ := LoadRecentSessions()
	next := []RecentSession{{
		SessionID: session.Id,
		Film:      session.Film.Title,
		Cinema:    session.Hall.Cinema.Name,
		StartTime: session.StartTime,
	}}

	for _, existing := range history {
		if existing.SessionID == session.Id {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentSessions {
			break
		}
	}

	return saveRecentSessions(next)
}

func saveRecentSessions(sessions []RecentSession) error {
	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := sessionHistory{Sessions: sessions}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cinema-checkout-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cinema-checkout-cli", name), nil
}
