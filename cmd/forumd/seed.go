package main

import (
	"fmt"
	"os"

	"github.com/forumkit/forumcore/pkg/config"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/fatal"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/persist"
	"github.com/forumkit/forumcore/pkg/pipeline"
	"github.com/forumkit/forumcore/pkg/replay"
	"github.com/forumkit/forumcore/pkg/repository"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/forumkit/forumcore/pkg/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply a declarative YAML file of forum resources to the log",
	Long: `seed reads a YAML file describing users, categories and tags to
bootstrap a fresh forum, replays the existing log first so it can skip
resources that already exist, then durably appends whatever is new.

Example:
  forumd seed -f bootstrap.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "YAML file to apply (required)")
	_ = seedCmd.MarkFlagRequired("file")
}

// ForumResource is one entry in a seed file: a declarative instruction to
// ensure some entity exists, analogous to a single Kubernetes manifest
// document.
type ForumResource struct {
	Kind     string                 `yaml:"kind"`
	Metadata ResourceMetadata       `yaml:"metadata"`
	Spec     map[string]interface{} `yaml:"spec"`
}

type ResourceMetadata struct {
	Name string `yaml:"name"`
}

// SeedFile is the top-level document.
type SeedFile struct {
	APIVersion string          `yaml:"apiVersion"`
	Resources  []ForumResource `yaml:"resources"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	configPath, _ := cmd.Flags().GetString("config")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	snap, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfgStore := config.NewStore(snap)

	s := store.New()
	s.MaxVoteHistoryLength = snap.User.MaxVoteHistoryLength
	repo := repository.New(s, cfgStore, nil, nil)
	replay.Run(dataDir, true, repository.NewDirectWriter(repo))

	appender, err := persist.NewAppender(dataDir, snap.Persistence.CreateNewOutputFileEvery())
	if err != nil {
		fatal.Abort("seed", "failed to open appender", err, map[string]string{"data_dir": dataDir})
	}
	defer appender.Close()
	pipe := pipeline.New(appender, pipeline.DefaultCapacity)
	defer pipe.Close()
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	repo.Pipe = pipe
	repo.Broker = broker

	rc := repository.RequestContext{PerformingUser: id.Zero}

	for _, r := range seed.Resources {
		switch r.Kind {
		case "User":
			if _, ok := s.GetUserByAuth(getString(r.Spec, "auth", "")); ok {
				fmt.Printf("user already exists: %s (skipping)\n", r.Metadata.Name)
				continue
			}
			newID, code := repo.AddNewUser(rc, id.Zero, r.Metadata.Name, getString(r.Spec, "auth", ""))
			if !code.OK() {
				return fmt.Errorf("seed user %s: %s", r.Metadata.Name, code)
			}
			fmt.Printf("user created: %s (%s)\n", r.Metadata.Name, newID)

		case "DiscussionCategory":
			newID, code := repo.AddNewDiscussionCategory(rc, id.Zero, r.Metadata.Name, getString(r.Spec, "description", ""))
			if code == status.AlreadyExists {
				fmt.Printf("category already exists: %s (skipping)\n", r.Metadata.Name)
				continue
			}
			if !code.OK() {
				return fmt.Errorf("seed category %s: %s", r.Metadata.Name, code)
			}
			fmt.Printf("category created: %s (%s)\n", r.Metadata.Name, newID)

		case "DiscussionTag":
			newID, code := repo.AddNewDiscussionTag(rc, id.Zero, r.Metadata.Name)
			if code == status.AlreadyExists {
				fmt.Printf("tag already exists: %s (skipping)\n", r.Metadata.Name)
				continue
			}
			if !code.OK() {
				return fmt.Errorf("seed tag %s: %s", r.Metadata.Name, code)
			}
			fmt.Printf("tag created: %s (%s)\n", r.Metadata.Name, newID)

		default:
			return fmt.Errorf("unsupported resource kind: %s", r.Kind)
		}
	}

	return nil
}

func getString(m map[string]interface{}, key, defaultValue string) string {
	if v, ok := m[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return defaultValue
}
