// Package config loads and holds the forumcore runtime configuration: the
// validation bounds every repository operation checks arguments against, and
// the persistence/service tunables the event pipeline and appender read.
//
// A Snapshot is immutable once loaded; callers that need to react to a
// reload (SIGHUP, a config-reload RPC) hold a *Store instead and call Load
// for the current value.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot is one immutable configuration value, decoded from YAML. The
// field groups mirror spec.md §6's configuration table.
type Snapshot struct {
	User             UserConfig             `yaml:"user"`
	DiscussionThread  ThreadConfig           `yaml:"discussionThread"`
	DiscussionMessage MessageConfig          `yaml:"discussionThreadMessage"`
	DiscussionTag     TagConfig              `yaml:"discussionTag"`
	DiscussionCategory CategoryConfig        `yaml:"discussionCategory"`
	Persistence      PersistenceConfig       `yaml:"persistence"`
	Service          ServiceConfig           `yaml:"service"`
}

type UserConfig struct {
	MinNameLength               int `yaml:"minNameLength"`
	MaxNameLength               int `yaml:"maxNameLength"`
	MaxInfoLength               int `yaml:"maxInfoLength"`
	MaxSignatureLength          int `yaml:"maxSignatureLength"`
	MaxTitleLength              int `yaml:"maxTitleLength"`
	LastSeenUpdatePrecisionSeconds int `yaml:"lastSeenUpdatePrecision"`
	MaxUsersPerPage             int `yaml:"maxUsersPerPage"`
	OnlineUsersIntervalSeconds  int `yaml:"onlineUsersIntervalSeconds"`
	MaxLogoBinarySize           int `yaml:"maxLogoBinarySize"`
	MaxLogoWidth                int `yaml:"maxLogoWidth"`
	MaxLogoHeight               int `yaml:"maxLogoHeight"`
	ResetVoteExpiresInSeconds   int `yaml:"resetVoteExpiresInSeconds"`
	MaxVoteHistoryLength        int `yaml:"maxVoteHistoryLength"`
}

type ThreadConfig struct {
	MinNameLength                int `yaml:"minNameLength"`
	MaxNameLength                int `yaml:"maxNameLength"`
	MaxThreadsPerPage            int `yaml:"maxThreadsPerPage"`
	MaxUsersInVisitedSinceLastChange int `yaml:"maxUsersInVisitedSinceLastChange"`
}

type MessageConfig struct {
	MinContentLength     int `yaml:"minContentLength"`
	MaxContentLength     int `yaml:"maxContentLength"`
	MinChangeReasonLength int `yaml:"minChangeReasonLength"`
	MaxChangeReasonLength int `yaml:"maxChangeReasonLength"`
	MaxMessagesPerPage   int `yaml:"maxMessagesPerPage"`
}

type TagConfig struct {
	MinNameLength int `yaml:"minNameLength"`
	MaxNameLength int `yaml:"maxNameLength"`
	MaxUIBlobSize int `yaml:"maxUiBlobSize"`
}

type CategoryConfig struct {
	MinNameLength       int `yaml:"minNameLength"`
	MaxNameLength       int `yaml:"maxNameLength"`
	MaxDescriptionLength int `yaml:"maxDescriptionLength"`
}

type PersistenceConfig struct {
	InputFolder                   string `yaml:"inputFolder"`
	OutputFolder                  string `yaml:"outputFolder"`
	MessagesFile                  string `yaml:"messagesFile"`
	ValidateChecksum              bool   `yaml:"validateChecksum"`
	CreateNewOutputFileEverySeconds int  `yaml:"createNewOutputFileEverySeconds"`
}

type ServiceConfig struct {
	DisableCommands                    bool `yaml:"disableCommands"`
	DisableCommandsForAnonymousUsers   bool `yaml:"disableCommandsForAnonymousUsers"`
	MinSecondsBetweenPosts             int  `yaml:"minSecondsBetweenPosts"`
}

// LastSeenUpdatePrecision returns the configured precision as a duration.
func (c UserConfig) LastSeenUpdatePrecision() time.Duration {
	return time.Duration(c.LastSeenUpdatePrecisionSeconds) * time.Second
}

// OnlineUsersInterval returns the configured interval as a duration.
func (c UserConfig) OnlineUsersInterval() time.Duration {
	return time.Duration(c.OnlineUsersIntervalSeconds) * time.Second
}

// ResetVoteExpiresIn returns the configured expiry as a duration.
func (c UserConfig) ResetVoteExpiresIn() time.Duration {
	return time.Duration(c.ResetVoteExpiresInSeconds) * time.Second
}

// MinSecondsBetween returns the configured throttling window.
func (c ServiceConfig) MinSecondsBetween() time.Duration {
	return time.Duration(c.MinSecondsBetweenPosts) * time.Second
}

// CreateNewOutputFileEvery returns the configured rotation interval.
func (c PersistenceConfig) CreateNewOutputFileEvery() time.Duration {
	return time.Duration(c.CreateNewOutputFileEverySeconds) * time.Second
}

// Default returns the built-in configuration, used when no file is supplied
// and as the base that Load's decoded fields are merged over.
func Default() *Snapshot {
	return &Snapshot{
		User: UserConfig{
			MinNameLength:                  3,
			MaxNameLength:                  20,
			MaxInfoLength:                  1024,
			MaxSignatureLength:             150,
			MaxTitleLength:                 50,
			LastSeenUpdatePrecisionSeconds: 60,
			MaxUsersPerPage:                20,
			OnlineUsersIntervalSeconds:     300,
			MaxLogoBinarySize:              1 << 16,
			MaxLogoWidth:                   200,
			MaxLogoHeight:                  200,
			ResetVoteExpiresInSeconds:      86400 * 30,
			MaxVoteHistoryLength:           100,
		},
		DiscussionThread: ThreadConfig{
			MinNameLength:                    3,
			MaxNameLength:                    100,
			MaxThreadsPerPage:                20,
			MaxUsersInVisitedSinceLastChange: 1000,
		},
		DiscussionMessage: MessageConfig{
			MinContentLength:      5,
			MaxContentLength:      65000,
			MinChangeReasonLength: 0,
			MaxChangeReasonLength: 500,
			MaxMessagesPerPage:    20,
		},
		DiscussionTag: TagConfig{
			MinNameLength: 2,
			MaxNameLength: 30,
			MaxUIBlobSize: 4096,
		},
		DiscussionCategory: CategoryConfig{
			MinNameLength:        2,
			MaxNameLength:        50,
			MaxDescriptionLength: 1000,
		},
		Persistence: PersistenceConfig{
			InputFolder:                     "input",
			OutputFolder:                    "output",
			MessagesFile:                    "messages",
			ValidateChecksum:                true,
			CreateNewOutputFileEverySeconds: 3600,
		},
		Service: ServiceConfig{
			DisableCommands:                  false,
			DisableCommandsForAnonymousUsers: true,
			MinSecondsBetweenPosts:           0,
		},
	}
}

// Load reads path, merging its contents over Default. A missing file is not
// an error: Load returns the defaults unchanged, matching the teacher's
// convention of a zero-config first run.
func Load(path string) (*Snapshot, error) {
	snap := Default()
	if path == "" {
		return snap, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return snap, nil
}
