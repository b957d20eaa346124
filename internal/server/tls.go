// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/config"
)

// TLSMode represents the resolved TLS mode.
type TLSMode string

const (
	TLSModeOff        TLSMode = "off"
	TLSModeSelfSigned TLSMode = "selfsigned"
	TLSModeManual     TLSMode = "manual"
)

const (
	selfSignedValidity = 365 * 24 * time.Hour
	renewBefore        = 30 * 24 * time.Hour
)

// TLSResult contains the resolved TLS configuration.
type TLSResult struct {
	TLSConfig *tls.Config // nil in off mode
	Mode      TLSMode
}

// SetupTLS resolves the TLS mode and loads or creates the certificate for it.
func SetupTLS(cfg *config.Config) (*TLSResult, error) {
	mode := resolveTLSMode(cfg)
	slog.Info("tls_mode", "mode", mode)

	var (
		cert *tls.Certificate
		err  error
	)
	switch mode {
	case TLSModeOff:
		return &TLSResult{Mode: TLSModeOff}, nil
	case TLSModeSelfSigned:
		store := certStore{dir: filepath.Join(cfg.TLS.CertDir, "selfsigned")}
		cert, err = store.certificate(cfg.Server.Host)
		if err == nil {
			slog.Warn("self-signed certificate in use, API clients must trust it or skip verification")
		}
	case TLSModeManual:
		cert, err = loadManualCertificate(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	default:
		return nil, fmt.Errorf("unknown TLS mode: %s", mode)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("tls_certificate", "mode", mode, "sha256", fingerprint(cert))
	return &TLSResult{
		Mode: mode,
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{*cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

// resolveTLSMode honors an explicit mode. "auto" serves plain HTTP on localhost,
// the configured files when both are set and a self-signed certificate otherwise.
func resolveTLSMode(cfg *config.Config) TLSMode {
	switch mode := strings.ToLower(cfg.TLS.Mode); mode {
	case string(TLSModeOff), string(TLSModeSelfSigned), string(TLSModeManual):
		return TLSMode(mode)
	case "auto", "":
	default:
		slog.Warn("unknown TLS mode, using auto", "mode", mode)
	}

	switch {
	case config.IsLocalhost(cfg.Server.Host):
		return TLSModeOff
	case cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "":
		return TLSModeManual
	default:
		return TLSModeSelfSigned
	}
}

func loadManualCertificate(certFile, keyFile string) (*tls.Certificate, error) {
	if certFile == "" || keyFile == "" {
		return nil, errors.New("manual TLS mode requires both cert-file and key-file")
	}
	if _, err := os.Stat(certFile); err != nil {
		return nil, fmt.Errorf("certificate file not found: %w", err)
	}
	if _, err := os.Stat(keyFile); err != nil {
		return nil, fmt.Errorf("key file not found: %w", err)
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	return &cert, nil
}

// certStore keeps a self-signed key pair on disk and renews it before it expires.
type certStore struct {
	dir string
}

func (s certStore) certFile() string { return filepath.Join(s.dir, "cert.pem") }
func (s certStore) keyFile() string  { return filepath.Join(s.dir, "key.pem") }

// certificate returns the stored certificate, or a fresh one for host.
func (s certStore) certificate(host string) (*tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(s.certFile(), s.keyFile())
	switch {
	case err == nil && !expiresWithin(&cert, renewBefore):
		return &cert, nil
	case err == nil:
		slog.Info("self-signed certificate expiring soon, generating new one")
	case !errors.Is(err, os.ErrNotExist):
		slog.Warn("stored certificate invalid, generating new one", "error", err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create certificate directory: %w", err)
	}
	if err := s.generate(host); err != nil {
		return nil, err
	}

	cert, err = tls.LoadX509KeyPair(s.certFile(), s.keyFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load generated certificate: %w", err)
	}
	return &cert, nil
}

// generate writes an ECDSA P-256 certificate valid for host and the loopback names.
func (s certStore) generate(host string) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"Music Catalog"}, CommonName: host},
		NotBefore:             now,
		NotAfter:              now.Add(selfSignedValidity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}
	if ip := net.ParseIP(host); ip != nil {
		template.IPAddresses = append(template.IPAddresses, ip)
	} else if host != "" {
		template.DNSNames = append(template.DNSNames, host)
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}

	if err := writePEM(s.certFile(), "CERTIFICATE", der); err != nil {
		return err
	}
	return writePEM(s.keyFile(), "EC PRIVATE KEY", keyDER)
}

func writePEM(path, blockType string, der []byte) error {
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// expiresWithin reports whether the leaf certificate is unreadable or ends within d.
func expiresWithin(cert *tls.Certificate, d time.Duration) bool {
	if len(cert.Certificate) == 0 {
		return true
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return true
	}
	return time.Until(leaf.NotAfter) < d
}

// fingerprint formats the SHA-256 of the leaf as colon-separated hex.
func fingerprint(cert *tls.Certificate) string {
	if len(cert.Certificate) == 0 {
		return ""
	}
	sum := sha256.Sum256(cert.Certificate[0])
	return strings.ReplaceAll(fmt.Sprintf("% X", sum[:]), " ", ":")
}
