package config

import "os"

func IsDebug() bool {
	return os.Getenv("PARTSBOT_DEBUG") == "1"
}
