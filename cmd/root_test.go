package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleCmd_FlagsAreRegisteredWithDefaults(t *testing.T) {
	ccrFlag := scheduleCmd.Flags().Lookup("ccr")
	assert.NotNil(t, ccrFlag, "ccr flag must be registered")
	assert.Equal(t, "0.4", ccrFlag.DefValue, "default ccr must match sched.DefaultConfig()")

	tasksFlag := scheduleCmd.Flags().Lookup("tasks")
	assert.NotNil(t, tasksFlag, "tasks flag must be registered")
	assert.Equal(t, "tasks.csv", tasksFlag.DefValue)

	logFlag := scheduleCmd.Flags().Lookup("log")
	assert.NotNil(t, logFlag, "log flag must be registered on schedule but not validate")
}

func TestValidateCmd_SharesDatasetFlagsButNotLog(t *testing.T) {
	assert.NotNil(t, validateCmd.Flags().Lookup("dag"), "dag flag must be registered")
	assert.NotNil(t, validateCmd.Flags().Lookup("generate"), "generate flag must be registered")
	assert.Nil(t, validateCmd.Flags().Lookup("log"), "validate has no log-level flag, it logs at logrus's default level")
	assert.Nil(t, validateCmd.Flags().Lookup("out"), "validate never writes a schedule, so --out is schedule-only")
}

func TestRootCmd_RegistersBothSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["schedule"], "schedule subcommand must be registered")
	assert.True(t, names["validate"], "validate subcommand must be registered")
}
