package server

import "fmt"

const HTTP_BAD_REQUEST = 400
const HTTP_TIMEOUT = 408

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("n/a:%d", ps)
	}
}

func (ps PlayerSessionState) String() string {
	return ps.Name()
}
