package logging

import (
	"log"
	"os"
)

func New() *log.Logger {
	return log.New(os.Stdout, "colorkeep ", log.LstdFlags|log.LUTC)
}
