// Package config 加载联系人服务的配置
//
// 配置按顺序合并：结构体默认值，然后是 YAML 或 JSON 文件。
// 命令行参数由调用方在 Load 之后直接覆盖字段。
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"
	"github.com/lwmacct/251215-go-pkg-contacts/pkg/contacts"
)

// Config 顶层配置
type Config struct {
	System   SystemConfig   `koanf:"system"`
	Contacts ContactsConfig `koanf:"contacts"`
	Log      LogOptions     `koanf:"log"`
}

// SystemConfig Actor 系统配置
type SystemConfig struct {
	Name              string `koanf:"name"`
	MailboxSize       int    `koanf:"mailbox_size"`
	DeadLetterLogging bool   `koanf:"dead_letter_logging"`
}

// ContactsConfig 联系人 Actor 配置
type ContactsConfig struct {
	ActorName  string        `koanf:"actor_name"`
	AskTimeout time.Duration `koanf:"ask_timeout"`
	// DemoSeed 为 true 时预置 contacts.SeedContacts
	DemoSeed bool          `koanf:"demo_seed"`
	Seed     []SeedContact `koanf:"seed"`
}

// SeedContact 配置文件中的初始联系人
type SeedContact struct {
	ID     string `koanf:"id"`
	Name   string `koanf:"name"`
	Street string `koanf:"street"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		System: SystemConfig{
			Name:              "contacts",
			DeadLetterLogging: true,
		},
		Contacts: ContactsConfig{
			ActorName:  contacts.DefaultActorName,
			AskTimeout: contacts.DefaultAskTimeout,
			DemoSeed:   true,
		},
		Log: LogOptions{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 读取配置文件，path 为空时只使用默认值
//
// 按扩展名选择解析器：.json 使用 JSON，其余按 YAML 处理。
func Load(path string) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, "config: load %s", path)
		}
	}
	return unmarshal(k)
}

// LoadBytes 从内存中的数据加载配置，format 为 "yaml" 或 "json"
func LoadBytes(data []byte, format string) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(rawbytes.Provider(data), parserFor("."+format)); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}
	return unmarshal(k)
}

func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "config: load defaults")
	}
	return k, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置
func (c *Config) Validate() error {
	if c.System.Name == "" {
		return errors.New("config: system.name is required")
	}
	if c.System.MailboxSize < 0 {
		return errors.Errorf("config: system.mailbox_size must be >= 0, got %d", c.System.MailboxSize)
	}
	if c.Contacts.ActorName == "" || strings.HasPrefix(c.Contacts.ActorName, "$") {
		return errors.Errorf("config: invalid contacts.actor_name %q", c.Contacts.ActorName)
	}
	if c.Contacts.AskTimeout <= 0 {
		return errors.Errorf("config: contacts.ask_timeout must be positive, got %v", c.Contacts.AskTimeout)
	}
	_, err := c.Contacts.Store()
	return err
}

// ActorConfig 转换为 actor.SystemConfig
func (c *SystemConfig) ActorConfig() *actor.SystemConfig {
	return &actor.SystemConfig{
		DefaultActorMailboxSize: c.MailboxSize,
		EnableDeadLetterLogging: c.DeadLetterLogging,
	}
}

// Store 构建初始联系人存储
func (c *ContactsConfig) Store() (contacts.Store, error) {
	var seed []contacts.Contact
	if c.DemoSeed {
		seed = contacts.SeedContacts()
	}
	for _, s := range c.Seed {
		seed = append(seed, contacts.Contact{
			ID:     contacts.ContactID(s.ID),
			Name:   s.Name,
			Street: s.Street,
		})
	}
	return contacts.NewStore(seed...)
}
