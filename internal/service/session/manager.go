package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

var (
	// ErrNotFound - сессия не существует или истекла.
	ErrNotFound = errors.New("session not found")
	// ErrBuildInFlight - по сессии уже идёт сборка документа.
	ErrBuildInFlight = errors.New("document build already in flight")
)

type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// Manager владеет сессиями форм. Сессии живут в памяти процесса,
// все мутации проходят под общим замком, наружу отдаются копии.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*models.FormSession
	ttl      time.Duration
	sweep    time.Duration
	logger   zerolog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &Manager{
		sessions: make(map[string]*models.FormSession),
		ttl:      cfg.TTL,
		sweep:    cfg.SweepInterval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start запускает уборку истёкших сессий.
func (m *Manager) Start() {
	go m.janitor()
}

func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

// Create заводит новую сессию. Начальные значения полей приходят из
// автозаполнения; поля, зависящие от вида занятия, всегда стартуют пустыми.
func (m *Manager) Create(deviceID string, defaults models.RawFieldInputs) models.FormSession {
	defaults.ActivityType = ""
	defaults.Course = ""
	defaults.Professor = ""

	now := time.Now()
	s := &models.FormSession{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Fields:    defaults,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return *s
}

// Get возвращает копию сессии и продлевает её срок жизни.
func (m *Manager) Get(id string) (models.FormSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.locked(id)
	if err != nil {
		return models.FormSession{}, err
	}
	s.ExpiresAt = time.Now().Add(m.ttl)
	return *s, nil
}

// MergeFields вливает присланные изменения в поля сессии под замком
// и возвращает итоговую копию.
func (m *Manager) MergeFields(id string, req models.UpdateFieldsRequest) (models.FormSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.locked(id)
	if err != nil {
		return models.FormSession{}, err
	}

	applyField(&s.Fields.ActivityType, req.ActivityType)
	applyField(&s.Fields.Language, req.Language)
	applyField(&s.Fields.Name, req.Name)
	applyField(&s.Fields.ID, req.ID)
	applyField(&s.Fields.Degree, req.Degree)
	applyField(&s.Fields.Course, req.Course)
	applyField(&s.Fields.Professor, req.Professor)
	applyField(&s.Fields.Date, req.Date)
	applyField(&s.Fields.City, req.City)
	applyField(&s.Fields.ImagePath, req.ImagePath)

	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	return *s, nil
}

// MarkSubmitted взводит флаг первой отправки до проверки условных правил.
// Возвращает копию сессии и признак, что переход случился именно сейчас.
func (m *Manager) MarkSubmitted(id string) (models.FormSession, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.locked(id)
	if err != nil {
		return models.FormSession{}, false, err
	}

	flipped := s.State.MarkSubmitted()
	s.UpdatedAt = time.Now()
	return *s, flipped, nil
}

// BeginBuild занимает сессию под сборку документа. Повторная отправка,
// пока сборка не завершена, отклоняется.
func (m *Manager) BeginBuild(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.locked(id)
	if err != nil {
		return err
	}
	if s.Building {
		return ErrBuildInFlight
	}
	s.Building = true
	return nil
}

// EndBuild освобождает сессию. Вызывается и при успехе, и при ошибке.
func (m *Manager) EndBuild(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Building = false
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// locked ищет живую сессию; вызывается только под m.mu.
func (m *Manager) locked(id string) (*models.FormSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictExpired()
		}
	}
}

func (m *Manager) evictExpired() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
			m.logger.Debug().Str("session_id", id).Msg("expired form session evicted")
		}
	}
}

func applyField(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
