package data

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed yaml/*.yaml
var defaults embed.FS

// MonsterTemplate holds the fixed stats a monster is spawned with.
type MonsterTemplate struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	HP   int    `yaml:"hp"`
	ATK  int    `yaml:"atk"`
	DEF  int    `yaml:"def"`
	SPD  int    `yaml:"spd"`
	Exp  int    `yaml:"exp"`
}

type monsterListFile struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
}

// MonsterTable holds all monster templates indexed by key.
type MonsterTable struct {
	templates map[string]*MonsterTemplate
}

// LoadMonsterTable loads monster templates from a YAML file. An empty path
// loads the built-in slime/goblin/troll set.
func LoadMonsterTable(path string) (*MonsterTable, error) {
	raw, err := readTable(path, "yaml/monster_list.yaml")
	if err != nil {
		return nil, fmt.Errorf("read monster_list: %w", err)
	}
	var f monsterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse monster_list: %w", err)
	}
	t := &MonsterTable{templates: make(map[string]*MonsterTemplate, len(f.Monsters))}
	for i := range f.Monsters {
		m := &f.Monsters[i]
		if m.Key == "" {
			return nil, fmt.Errorf("parse monster_list: entry %d has no key", i)
		}
		if m.HP <= 0 || m.ATK < 0 || m.DEF < 0 || m.SPD < 0 || m.Exp < 0 {
			return nil, fmt.Errorf("parse monster_list: %s has invalid stats", m.Key)
		}
		if m.Name == "" {
			m.Name = m.Key
		}
		t.templates[m.Key] = m
	}
	return t, nil
}

// Get returns a template by key, or nil if not found.
func (t *MonsterTable) Get(key string) *MonsterTemplate {
	return t.templates[key]
}

// Count returns the number of loaded templates.
func (t *MonsterTable) Count() int {
	return len(t.templates)
}

// Keys returns the template keys in sorted order.
func (t *MonsterTable) Keys() []string {
	keys := make([]string, 0, len(t.templates))
	for k := range t.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
