package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names read by the service
const (
	KeyPort           = "PORT"
	KeyEnvironment    = "ENVIRONMENT"
	KeyReleaseVersion = "RELEASE_VERSION"
	KeyGitCommit      = "GIT_COMMIT"
	KeyECSCluster     = "ECS_CLUSTER"
	KeyECSService     = "ECS_SERVICE"
	KeyAWSRegion      = "AWS_REGION"
)

// Fallback values used when a variable is absent or empty
const (
	DefaultPort        = "3000"
	DefaultEnvironment = "development"
	DefaultVersion     = "1.0.0"
	Unknown            = "unknown"
)

// Source looks up configuration values by key
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads from the process environment on every lookup
type EnvSource struct{}

// Lookup implements Source
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource is a fixed set of values, mostly useful in tests
type MapSource map[string]string

// Lookup implements Source
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Lookup returns the value for key, or fallback when it is missing or empty
func Lookup(src Source, key, fallback string) string {
	if src == nil {
		return fallback
	}
	if v, ok := src.Lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

// Snapshot is a read-only view of the deployment environment at one point in time
type Snapshot struct {
	Environment    string
	ReleaseVersion string
	GitCommit      string
	ECSCluster     string
	ECSService     string
	AWSRegion      string
}

// Load builds a Snapshot from src, applying the documented fallbacks
func Load(src Source) Snapshot {
	return Snapshot{
		Environment:    Lookup(src, KeyEnvironment, DefaultEnvironment),
		ReleaseVersion: Lookup(src, KeyReleaseVersion, Unknown),
		GitCommit:      Lookup(src, KeyGitCommit, Unknown),
		ECSCluster:     Lookup(src, KeyECSCluster, Unknown),
		ECSService:     Lookup(src, KeyECSService, Unknown),
		AWSRegion:      Lookup(src, KeyAWSRegion, Unknown),
	}
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, err
	}
	return true, nil
}
