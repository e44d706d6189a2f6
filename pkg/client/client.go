/*
 * This file is part of nuts-ocpi.
 *
 * nuts-ocpi is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * nuts-ocpi is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with nuts-ocpi.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/thedevsaddam/gojsonq/v2"
)

const maxResponseSize = 1 << 20

// Authorization is the token used to call a remote party. ClientCertificates, when set, holds PEM blocks with a
// certificate chain and its private key, presented in the TLS handshake.
type Authorization struct {
	Token              types.AccessToken
	Base64Encoded      bool
	ClientCertificates []string
}

// AuthorizationFor returns the Authorization for the given remote access info.
func AuthorizationFor(info types.RemoteAccessInfo) Authorization {
	return Authorization{Token: info.Token, Base64Encoded: info.TokenBase64Encoded, ClientCertificates: info.ClientCertificates}
}

// RequestModifier is applied to every outgoing request, in order.
type RequestModifier func(req *http.Request)

// Client calls the versions and credentials modules of remote parties.
type Client interface {
	GetVersions(ctx context.Context, versionsURL string, auth Authorization) VersionsResult
	GetVersionDetails(ctx context.Context, versionsURL string, versionID types.VersionID, auth Authorization) VersionDetailsResult
	GetVersionDetailsFromURL(ctx context.Context, versionURL string, versionID types.VersionID, auth Authorization) VersionDetailsResult
	PostCredentials(ctx context.Context, credentialsURL string, auth Authorization, payload interface{}) CredentialsResult
	PutCredentials(ctx context.Context, credentialsURL string, auth Authorization, payload interface{}) CredentialsResult
	DeleteCredentials(ctx context.Context, credentialsURL string, auth Authorization) CredentialsResult
}

// HTTPClient is the Client speaking HTTP.
type HTTPClient struct {
	httpClient *http.Client
	timeout    time.Duration
	modifiers  []RequestModifier
}

// Option configures an HTTPClient.
type Option func(c *HTTPClient)

// WithHTTPClient replaces the default http.Client, e.g. to configure TLS client certificates.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every call. A zero timeout only relies on the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = timeout
	}
}

// WithRequestModifiers appends request modifiers.
func WithRequestModifiers(modifiers ...RequestModifier) Option {
	return func(c *HTTPClient) {
		c.modifiers = append(c.modifiers, modifiers...)
	}
}

// NewHTTPClient creates a new HTTPClient.
func NewHTTPClient(options ...Option) *HTTPClient {
	c := &HTTPClient{httpClient: &http.Client{}, timeout: 30 * time.Second}
	for _, option := range options {
		option(c)
	}
	return c
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi-client")
}

// GetVersions fetches the versions a remote party supports.
func (c HTTPClient) GetVersions(ctx context.Context, versionsURL string, auth Authorization) VersionsResult {
	if versionsURL == "" {
		return VersionsResult{Response: localValidationError("Missing versions URL!")}
	}
	response, data := c.call(ctx, http.MethodGet, versionsURL, auth, nil)
	result := VersionsResult{Response: response}
	if !response.Success() {
		return result
	}
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &result.Data); err != nil {
			result.Response = malformed(response.HTTPResponse, fmt.Sprintf("Invalid versions: %v", err))
			return result
		}
	}
	return result
}

// GetVersionDetails fetches the endpoint catalog of the given version. Unknown versions are rejected without
// any HTTP request being made.
func (c HTTPClient) GetVersionDetails(ctx context.Context, versionsURL string, versionID types.VersionID, auth Authorization) VersionDetailsResult {
	if !versionID.IsImplemented() {
		return VersionDetailsResult{Response: localValidationError(types.StatusMessageUnknownVersion)}
	}
	versions := c.GetVersions(ctx, versionsURL, auth)
	if !versions.Success() {
		return VersionDetailsResult{Response: versions.Response}
	}
	for _, v := range versions.Data {
		if v.Version == versionID {
			return c.GetVersionDetailsFromURL(ctx, v.URL, versionID, auth)
		}
	}
	return VersionDetailsResult{Response: Response{
		HTTPResponse:  versions.HTTPResponse,
		StatusCode:    types.StatusUnsupportedVersion,
		StatusMessage: fmt.Sprintf("Version %s is not supported by the remote party!", versionID),
		Timestamp:     versions.Timestamp,
		Kind:          KindProtocol,
	}}
}

// GetVersionDetailsFromURL fetches the endpoint catalog from a version URL as found in the versions list.
func (c HTTPClient) GetVersionDetailsFromURL(ctx context.Context, versionURL string, versionID types.VersionID, auth Authorization) VersionDetailsResult {
	if !versionID.IsImplemented() {
		return VersionDetailsResult{Response: localValidationError(types.StatusMessageUnknownVersion)}
	}
	response, data := c.call(ctx, http.MethodGet, versionURL, auth, nil)
	result := VersionDetailsResult{Response: response}
	if !response.Success() {
		return result
	}
	detail := &types.VersionDetail{}
	if err := json.Unmarshal(data, detail); err != nil {
		result.Response = malformed(response.HTTPResponse, fmt.Sprintf("Invalid version details: %v", err))
		return result
	}
	if detail.Version != versionID {
		result.Response = malformed(response.HTTPResponse, fmt.Sprintf("Version details are for version %s, expected %s", detail.Version, versionID))
		return result
	}
	if !detail.HasUniqueEndpoints() {
		result.Response = malformed(response.HTTPResponse, "Version details list a module/role pair more than once")
		return result
	}
	result.Data = detail
	return result
}

// PostCredentials registers with a remote party.
func (c HTTPClient) PostCredentials(ctx context.Context, credentialsURL string, auth Authorization, payload interface{}) CredentialsResult {
	return c.credentials(ctx, http.MethodPost, credentialsURL, auth, payload)
}

// PutCredentials updates the credentials at a remote party.
func (c HTTPClient) PutCredentials(ctx context.Context, credentialsURL string, auth Authorization, payload interface{}) CredentialsResult {
	return c.credentials(ctx, http.MethodPut, credentialsURL, auth, payload)
}

// DeleteCredentials unregisters at a remote party.
func (c HTTPClient) DeleteCredentials(ctx context.Context, credentialsURL string, auth Authorization) CredentialsResult {
	return c.credentials(ctx, http.MethodDelete, credentialsURL, auth, nil)
}

func (c HTTPClient) credentials(ctx context.Context, method string, credentialsURL string, auth Authorization, payload interface{}) CredentialsResult {
	if credentialsURL == "" {
		return CredentialsResult{Response: localValidationError("Missing credentials URL!")}
	}
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return CredentialsResult{Response: localValidationError(fmt.Sprintf("Unable to serialize credentials: %v", err))}
		}
	}
	response, data := c.call(ctx, method, credentialsURL, auth, body)
	return CredentialsResult{Response: response, Data: data}
}

// call performs the HTTP exchange and unpacks the OCPI envelope. The returned data is only set on success.
func (c HTTPClient) call(ctx context.Context, method string, url string, auth Authorization, body []byte) (Response, json.RawMessage) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return localValidationError(fmt.Sprintf("Invalid request: %v", err)), nil
	}
	if !auth.Token.IsZero() {
		req.Header.Set("Authorization", auth.Token.AuthorizationHeader(auth.Base64Encoded))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	requestID := uuid.NewV4().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("X-Correlation-ID", requestID)
	for _, modify := range c.modifiers {
		modify(req)
	}

	httpClient, err := c.clientFor(auth)
	if err != nil {
		return localValidationError(fmt.Sprintf("Invalid client certificate: %v", err)), nil
	}

	logger().Debugf("%s %s (request id: %s)", method, url, requestID)
	resp, err := httpClient.Do(req)
	if err != nil {
		logger().WithError(err).Warnf("%s %s failed", method, url)
		return Response{
			StatusCode:    StatusTransportError,
			StatusMessage: err.Error(),
			Timestamp:     time.Now().UTC(),
			Kind:          KindTransport,
		}, nil
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	httpResponse := &HTTPResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: responseBody}
	if err != nil {
		return Response{
			HTTPResponse:  httpResponse,
			StatusCode:    StatusTransportError,
			StatusMessage: err.Error(),
			Timestamp:     time.Now().UTC(),
			Kind:          KindTransport,
		}, nil
	}
	return parseEnvelope(httpResponse)
}

// parseEnvelope probes the envelope leniently: some implementations send the status code as a string.
func parseEnvelope(httpResponse *HTTPResponse) (Response, json.RawMessage) {
	jq := gojsonq.New().FromString(string(httpResponse.Body))
	if jq.Error() != nil {
		return malformed(httpResponse, fmt.Sprintf("HTTP %d without OCPI response", httpResponse.StatusCode)), nil
	}
	statusCode, ok := toInt(jq.Reset().Find("status_code"))
	if !ok {
		return malformed(httpResponse, fmt.Sprintf("HTTP %d without OCPI status code", httpResponse.StatusCode)), nil
	}
	response := Response{HTTPResponse: httpResponse, StatusCode: statusCode, Kind: KindNone}
	if message, ok := jq.Reset().Find("status_message").(string); ok {
		response.StatusMessage = message
	}
	response.Timestamp = time.Now().UTC()
	if timestamp, ok := jq.Reset().Find("timestamp").(string); ok {
		if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
			response.Timestamp = parsed
		}
	}
	if statusCode != types.StatusSuccess || httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		response.Kind = KindProtocol
		return response, nil
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(httpResponse.Body, &envelope); err != nil {
		return malformed(httpResponse, fmt.Sprintf("Invalid OCPI response: %v", err)), nil
	}
	return response, envelope.Data
}

func malformed(httpResponse *HTTPResponse, message string) Response {
	return Response{
		HTTPResponse:  httpResponse,
		StatusCode:    StatusMalformedMessage,
		StatusMessage: message,
		Timestamp:     time.Now().UTC(),
		Kind:          KindProtocol,
	}
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		return i, err == nil
	}
	return 0, false
}

// clientFor returns the http.Client to use for the authorization. With client certificates a copy of the
// configured transport is made that presents them and does not keep connections open.
func (c HTTPClient) clientFor(auth Authorization) (*http.Client, error) {
	if len(auth.ClientCertificates) == 0 {
		return c.httpClient, nil
	}
	material := []byte(strings.Join(auth.ClientCertificates, "\n"))
	certificate, err := tls.X509KeyPair(material, material)
	if err != nil {
		return nil, err
	}
	var transport *http.Transport
	if configured, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport = configured.Clone()
	} else {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.Certificates = []tls.Certificate{certificate}
	transport.DisableKeepAlives = true
	httpClient := *c.httpClient
	httpClient.Transport = transport
	return &httpClient, nil
}
