package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"steamfetch/internal/daemon"
	"steamfetch/internal/job"
	"steamfetch/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{daemon: d, logger: logger}
	if err := rpcServer.RegisterName("Steamfetch", svc); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
		)
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
}

func (s *service) Submit(req SubmitRequest, resp *SubmitResponse) error {
	submitted, err := s.daemon.Submit(job.Request{
		AppID:           req.AppID,
		Name:            req.Name,
		Username:        req.Username,
		Password:        req.Password,
		GuardCode:       req.GuardCode,
		ValidateInstall: req.Validate,
	})
	if err != nil {
		return err
	}
	resp.Job = FromJob(submitted)
	s.logger.Info("submit accepted",
		logging.String(logging.FieldJobID, submitted.ID),
		logging.String(logging.FieldAppID, submitted.AppID),
	)
	return nil
}

func (s *service) Cancel(req CancelRequest, resp *CancelResponse) error {
	if err := s.daemon.Cancel(req.ID); err != nil {
		resp.Cancelled = false
		resp.Message = err.Error()
		return nil
	}
	resp.Cancelled = true
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.StartedAt = status.StartedAt
	resp.LockPath = status.LockFilePath
	resp.SocketPath = status.SocketPath
	resp.MaxConcurrent = status.MaxConcurrent
	resp.PID = os.Getpid()
	resp.Active, resp.Queued, resp.History = fromSnapshot(s.daemon.Snapshot())
	return nil
}

func (s *service) QueueRemove(req QueueRemoveRequest, resp *QueueRemoveResponse) error {
	removed, err := s.daemon.RemoveQueued(req.Position)
	if err != nil {
		return err
	}
	resp.Job = FromJob(removed)
	return nil
}

func (s *service) QueueMove(req QueueMoveRequest, resp *QueueMoveResponse) error {
	if err := s.daemon.MoveQueued(req.From, req.To); err != nil {
		return err
	}
	resp.Moved = true
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.daemon.Stop()
	resp.Stopped = true
	s.logger.Info("daemon stopped via ipc")
	return nil
}
