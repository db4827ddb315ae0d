package logging

import "go.uber.org/zap"

func GetSugaredLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("cannot initialize zap")
	}

	return logger.Sugar().Named("demochain")
}
