package main

import (
	"ShaderLab/internal/app"
	"ShaderLab/internal/config"
	"ShaderLab/internal/logger"
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shaderlab: %v\n", err)
		os.Exit(2)
	}

	if err := logger.Init(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}); err != nil {
		fmt.Fprintf(os.Stderr, "shaderlab: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	logger.Log.Info("ShaderLab starting", zap.String("config", *configPath))
	if err := app.Run(cfg); err != nil {
		logger.Log.Error("ShaderLab stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
