package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestParseUpdates(t *testing.T) {
	updates, err := parseUpdates([]string{"ip_memory", "10.0.0.1", "num_frames", "4", "reference_string", "[1,2,3]"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if updates["ip_memory"] != "10.0.0.1" {
		t.Errorf("Expected string ip, got %v", updates["ip_memory"])
	}
	if updates["num_frames"] != float64(4) {
		t.Errorf("Expected numeric num_frames, got %v", updates["num_frames"])
	}
	if refs, ok := updates["reference_string"].([]interface{}); !ok || len(refs) != 3 {
		t.Errorf("Expected a list for reference_string, got %v", updates["reference_string"])
	}

	if _, err := parseUpdates([]string{"ip_memory"}); err == nil {
		t.Errorf("Expected error for odd number of arguments")
	}
	if _, err := parseUpdates(nil); err == nil {
		t.Errorf("Expected error for no arguments")
	}
}

func TestUpdateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoria.json")
	if err := os.WriteFile(path, []byte(`{"port_memory": 8002, "replacement": "LRU"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	modified, err := updateConfigFile(path, map[string]interface{}{"replacement": "CLOCK", "ip_cpu": "1.1.1.1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !modified {
		t.Fatalf("Expected the file to be modified")
	}

	content, _ := os.ReadFile(path)
	var data map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if data["replacement"] != "CLOCK" {
		t.Errorf("Expected CLOCK, got %v", data["replacement"])
	}
	if _, ok := data["ip_cpu"]; ok {
		t.Errorf("Expected unknown keys not to be added")
	}
	if data["port_memory"] != float64(8002) {
		t.Errorf("Expected port_memory to be preserved, got %v", data["port_memory"])
	}
}

func TestUpdateConfigFile_NoMatchingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.json")
	original := `{"trace_path": "x"}`
	os.WriteFile(path, []byte(original), 0644)

	modified, err := updateConfigFile(path, map[string]interface{}{"num_frames": 3})
	if err != nil || modified {
		t.Errorf("Expected no modification, got modified=%v err=%v", modified, err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != original {
		t.Errorf("Expected file to be untouched, got %s", content)
	}
}

func TestUpdateConfigDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"log_level": "INFO"}`), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`log_level`), 0644)

	if err := updateConfigDir(dir, map[string]interface{}{"log_level": "DEBUG"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "a.json"))
	var data map[string]interface{}
	json.Unmarshal(content, &data)
	if data["log_level"] != "DEBUG" {
		t.Errorf("Expected DEBUG, got %v", data["log_level"])
	}
	notes, _ := os.ReadFile(filepath.Join(dir, "notes.txt"))
	if string(notes) != "log_level" {
		t.Errorf("Expected non-JSON files to be skipped")
	}
}
