package objectstore

import (
	"context"
	"io"
	"net"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

const sftpDialTimeout = 20 * time.Second

type sftpStore struct {
	addr      string
	user      string
	password  string
	remoteDir string
	baseURL   string
}

var _ core.FileStore = (*sftpStore)(nil) // interface compliance check

// NewSFTPStore uploads to host:port over SFTP under remoteDir/<bucket>/<path>.
// A connection is dialed per upload; uploads are infrequent enough that a
// pooled client is not worth the reconnect handling.
func NewSFTPStore(host string, port int, user, password, remoteDir, baseURL string) *sftpStore {
	if port <= 0 {
		port = 22
	}
	if remoteDir == "" {
		remoteDir = "/"
	}
	return &sftpStore{
		addr:      net.JoinHostPort(host, strconv.Itoa(port)),
		user:      user,
		password:  password,
		remoteDir: remoteDir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *sftpStore) Upload(ctx context.Context, bucket, filePath string, r io.Reader) (string, error) {
	sshClient, err := s.dial(ctx)
	if err != nil {
		return "", err
	}
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return "", errors.Wrap(err, "opening sftp session")
	}
	defer client.Close()

	remoteDir := path.Join(s.remoteDir, bucket)
	if err = client.MkdirAll(remoteDir); err != nil {
		return "", errors.Wrapf(err, "creating remote dir %s", remoteDir)
	}

	dst, err := client.Create(path.Join(remoteDir, filePath))
	if err != nil {
		return "", errors.Wrap(err, "creating remote file")
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		return "", errors.Wrap(err, "uploading file")
	}
	return s.PublicURL(bucket, filePath), nil
}

// dial respects ctx cancellation; ssh.Dial itself only honors the config
// timeout.
func (s *sftpStore) dial(ctx context.Context) (*ssh.Client, error) {
	sshConf := &ssh.ClientConfig{
		User:            s.user,
		Auth:            []ssh.AuthMethod{ssh.Password(s.password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: verify against known_hosts
		Timeout:         sftpDialTimeout,
	}

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		client, err := ssh.Dial("tcp", s.addr, sshConf)
		ch <- dialRes{client: client, err: err}
	}()

	select {
	case <-ctx.Done():
		// the dial may still succeed after we bail; close its client
		go func() {
			if res := <-ch; res.client != nil {
				_ = res.client.Close()
			}
		}()
		return nil, errors.Wrap(ctx.Err(), "sftp dial canceled")
	case res := <-ch:
		if res.err != nil {
			return nil, errors.Wrap(res.err, "dialing sftp host")
		}
		return res.client, nil
	}
}

func (s *sftpStore) PublicURL(bucket, filePath string) string {
	return s.baseURL + "/" + bucket + "/" + strings.TrimPrefix(filePath, "/")
}
