/*
Package log provides structured logging built on zerolog.

A single global Logger is configured once at process start via Init and used
throughout forumcore: the entity store, repository façade, event pipeline,
file appender, and replayer all log through it rather than holding their own
logger instances.

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true, Output: os.Stdout})
	log.Info("forumcore starting")

	repoLog := log.WithComponent("repository")
	repoLog.Debug().Str("user_id", id.String()).Msg("add new user")

Fatal errors (event file write failure, replay crc/magic mismatch) use
Logger.Fatal(), which logs and calls os.Exit(1); see pkg/fatal for the shared
abort helper every such call site goes through.
*/
package log
