package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/datagrid/internal/log"
)

// SaveColumns replaces the columns section of the config file. Comments and
// formatting elsewhere in the file are preserved.
func SaveColumns(configPath string, columns []ColumnConfig) error {
	return saveSection(configPath, "columns", buildColumnsNode(columns))
}

// SaveFrozenColumn replaces the frozen_column section of the config file.
func SaveFrozenColumn(configPath string, f FrozenConfig) error {
	node := mapping(
		"enabled", boolScalar(f.Enabled),
		"header", strScalar(f.Header),
	)
	if f.Field != "" {
		node.Content = append(node.Content, strScalar("field"), strScalar(f.Field))
	}
	if f.Width > 0 {
		node.Content = append(node.Content, strScalar("width"), intScalar(f.Width))
	}
	return saveSection(configPath, "frozen_column", node)
}

func saveSection(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	switch {
	case doc.Kind == 0:
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{mapping(key, value)},
		}
	case doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode:
		root := doc.Content[0]
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == key {
				root.Content[i+1] = value
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content, strScalar(key), value)
		}
	default:
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save config", err, "path", configPath, "section", key)
		return err
	}
	log.Info(log.CatConfig, "Saved config section", "path", configPath, "section", key)
	return nil
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".datagrid.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func buildColumnsNode(columns []ColumnConfig) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(columns)),
	}
	for _, col := range columns {
		colNode := mapping("field", strScalar(col.Field))
		if col.Header != "" && col.Header != col.Field {
			colNode.Content = append(colNode.Content, strScalar("header"), strScalar(col.Header))
		}
		if col.Width > 0 {
			colNode.Content = append(colNode.Content, strScalar("width"), intScalar(col.Width))
		}
		if col.Align != "" && col.Align != "left" {
			colNode.Content = append(colNode.Content, strScalar("align"), strScalar(col.Align))
		}
		node.Content = append(node.Content, colNode)
	}
	return node
}

// mapping builds a mapping node from alternating keys and value nodes.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, strScalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intScalar(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolScalar(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}
