package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink is where serialized order events go: Kafka, a partitioned JSON file
// tree, or stdout for local development.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleSink) Close() error { return nil }

// JSONFileSink appends events to newline-delimited JSON files partitioned
// by event day, one directory per topic. Handlers publish from concurrent
// requests, so the open-file map and the appends are mutex-guarded.
type JSONFileSink struct {
	basePath string

	mu    sync.Mutex
	files map[string]*os.File
}

func NewJSONFileSink(basePath string) *JSONFileSink {
	return &JSONFileSink{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONFileSink) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	ts, ok := event["timestamp"].(string)
	if !ok {
		return fmt.Errorf("event without timestamp")
	}
	eventTime, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return fmt.Errorf("invalid event timestamp: %w", err)
	}

	year, month, day := eventTime.UTC().Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
	fullPath := filepath.Join(j.basePath, topic, partitionPath)

	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)

	j.mu.Lock()
	defer j.mu.Unlock()

	file, ok := j.files[fileKey]
	if !ok {
		file, err = os.OpenFile(filepath.Join(fullPath, "events.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONFileSink) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}
