package winium

import "github.com/mj1618/winium-desktop/internal/platform"

func init() {
	platform.NewDriverFunc = func(opts platform.SessionOptions) (platform.Driver, error) {
		d, err := Open(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
