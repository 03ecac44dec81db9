package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv 加载 .env 文件到进程环境变量
//
// 文件不存在不是错误；已存在的环境变量不会被覆盖（godotenv.Load 的语义）。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		log.Printf("[Config] Loaded environment overrides from %s", path)
	}
	return nil
}

// ApplyEnvOverrides 用环境变量覆盖配置中的部分字段
func (c *CampusConfig) ApplyEnvOverrides() error {
	if dir := os.Getenv(EnvAssetsDir); dir != "" {
		c.Assets.Dir = dir
		log.Printf("[Config] %s override: %s", EnvAssetsDir, dir)
	}

	if boards := os.Getenv(EnvBoards); boards != "" {
		c.Assets.Boards = boards
		log.Printf("[Config] %s override: %s", EnvBoards, boards)
	}

	if raw := os.Getenv(EnvMoveSpeed); raw != "" {
		speed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvMoveSpeed, raw, err)
		}
		if speed < 0 {
			return fmt.Errorf("invalid %s=%q: must not be negative", EnvMoveSpeed, raw)
		}
		c.Dolly.MoveSpeed = speed
		log.Printf("[Config] %s override: %.2f", EnvMoveSpeed, speed)
	}

	return nil
}
