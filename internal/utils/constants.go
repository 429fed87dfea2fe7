package utils

// ConfigFileName is the name of the per-project configuration file.
const ConfigFileName = ".kodipack.yaml"

// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
const GlobalConfigDirectoryName = ".kodipack"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage reports a top-level command failure.
const ApplicationExecutionFailedMessage = "kodipack execution failed"
