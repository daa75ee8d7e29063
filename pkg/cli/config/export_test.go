package config

import "io"

func (c *Logger) SetOutput(w io.Writer) {
	c.output = w
}
