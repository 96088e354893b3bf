package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/justopinion/justopinion/pkg/research"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers NDJSON requests read from in, writing one response line
// per request to out.
type Server struct {
	core    *research.Core
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(core *research.Core, in io.Reader, out io.Writer) *Server {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &Server{
		core:    core,
		encoder: enc,
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "locate":
		var p LocatePayload
		s.handle(req, &p, func() (any, error) { return s.core.Locate(p) })
	case "locate_batch":
		var p LocateBatchPayload
		s.handle(req, &p, func() (any, error) { return s.core.LocateBatch(p.Items) })
	case "render":
		var p RenderPayload
		s.handle(req, &p, func() (any, error) { return s.core.Render(p) })
	case "cite":
		var p CitePayload
		s.handle(req, &p, func() (any, error) { return s.core.Cite(p.Text) })
	case "normalize":
		var p CitePayload
		s.handle(req, &p, func() (any, error) { return s.core.Normalize(p.Text) })
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

// handle decodes the request payload into p, then answers with the result of run.
func (s *Server) handle(req Request, p any, run func() (any, error)) {
	if err := json.Unmarshal(req.Payload, p); err != nil {
		s.sendError(req.Type, err.Error())
		return
	}

	result, err := run()
	if err != nil {
		s.sendError(req.Type, err.Error())
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.sendError(req.Type, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    req.Type,
		Data:    data,
	})
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
