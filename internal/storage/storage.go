// /internal/storage/storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"mirror-bot/datastore"
)

const commandHistoryLimit int = 20

// Storage wraps the JSON datastore that holds simulation batches and the
// per-guild command history.
type Storage struct {
	ds *datastore.DataStore
}

// SimulationBatch is a frozen snapshot of a user's messages, used by the
// analysis engine in place of live history. Batches are keyed by user only:
// a capture in one guild replaces the user's batch everywhere.
type SimulationBatch struct {
	UserID     string    `json:"user_id"`
	Messages   []string  `json:"messages"`
	CapturedAt time.Time `json:"captured_at"`
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Param     string    `json:"param"`
	Datetime  time.Time `json:"datetime"`
}

type guildRecord struct {
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func batchKey(userID string) string {
	return "batch:" + userID
}

func guildKey(guildID string) string {
	return "guild:" + guildID
}

// UpsertBatch replaces the user's simulation batch wholesale.
func (s *Storage) UpsertBatch(userID string, messages []string) error {
	s.ds.Set(batchKey(userID), &SimulationBatch{
		UserID:     userID,
		Messages:   messages,
		CapturedAt: time.Now().UTC(),
	})
	return nil
}

// Batch returns the user's simulation batch, if one was ever captured.
func (s *Storage) Batch(userID string) (*SimulationBatch, bool, error) {
	data, exists := s.ds.Get(batchKey(userID))
	if !exists {
		return nil, false, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("error marshalling batch: %w", err)
	}

	var batch SimulationBatch
	if err := json.Unmarshal(jsonData, &batch); err != nil {
		return nil, false, fmt.Errorf("error unmarshalling to *SimulationBatch: %w", err)
	}

	return &batch, true, nil
}

func (s *Storage) getOrCreateGuildRecord(guildID string) (*guildRecord, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		record := &guildRecord{CommandsHistoryList: []CommandHistoryRecord{}}
		s.ds.Set(guildKey(guildID), record)
		return record, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record guildRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *guildRecord: %w", err)
	}

	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandToHistory appends a command history record for a guild.
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, command)
	s.ds.Set(guildKey(guildID), record)
	return nil
}

// FetchCommandHistory returns the recorded command history for a guild.
func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
