package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/share/upstream"
)

const (
	logPrefix = "predictor"

	binaryPath        = "/predict/binary"
	multiclassPath    = "/predict/multiclass"
	calculateTimePath = "/predict/calculate_time"
)

var (
	ErrMalformedResponse = errors.New("malformed prediction response")
	ErrUnexpectedStatus  = errors.New("unexpected prediction response status")
	ErrEmptySymptoms     = errors.New("empty symptoms")
)

// Predictor - interface to the machine learning prediction service
type Predictor interface {
	PredictSeverity(ctx context.Context, symptoms string) (schema.Severity, error)
	PredictDepartment(ctx context.Context, symptoms string) (string, error)
	PredictTravelTime(ctx context.Context, from schema.Location, distanceKm float64) (int, error)
}

type predictor struct {
	url    string
	token  string
	client *http.Client
	caller *upstream.Caller
}

type symptomsRequest struct {
	Symptoms string `json:"symptoms"`
}

type binaryResponse struct {
	Result *string `json:"result"`
	Error  string  `json:"error"`
}

type multiclassResponse struct {
	PredictedDepartment string `json:"predicted_department"`
	Error               string `json:"error"`
}

type travelTimeRequest struct {
	StartLat float64 `json:"startLat"`
	StartLon float64 `json:"startLon"`
	Distance float64 `json:"distance"`
}

type travelTimeResponse struct {
	EstimatedTime *int   `json:"estimated_time"`
	Error         string `json:"error"`
}

// PredictSeverity classifies symptoms as severe or non-severe
func (p *predictor) PredictSeverity(ctx context.Context, symptoms string) (schema.Severity, error) {
	if strings.TrimSpace(symptoms) == "" {
		return "", ErrEmptySymptoms
	}

	var r binaryResponse
	if err := p.caller.Do(ctx, "binary", func(ctx context.Context) error {
		return p.post(ctx, binaryPath, symptomsRequest{Symptoms: symptoms}, &r)
	}); err != nil {
		return "", err
	}

	if r.Error != "" || r.Result == nil || *r.Result == "" || *r.Result == consts.PredictionFailed {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  r.Error,
		}).Error("severity prediction failed")
		return "", ErrMalformedResponse
	}

	if *r.Result == consts.SevereLabel {
		return schema.SeveritySevere, nil
	}
	return schema.SeverityNonSevere, nil
}

// PredictDepartment recommends a medical department for symptoms
func (p *predictor) PredictDepartment(ctx context.Context, symptoms string) (string, error) {
	if strings.TrimSpace(symptoms) == "" {
		return "", ErrEmptySymptoms
	}

	var r multiclassResponse
	if err := p.caller.Do(ctx, "multiclass", func(ctx context.Context) error {
		return p.post(ctx, multiclassPath, symptomsRequest{Symptoms: symptoms}, &r)
	}); err != nil {
		return "", err
	}

	if r.Error != "" || r.PredictedDepartment == "" || r.PredictedDepartment == consts.PredictionFailed {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  r.Error,
		}).Error("department prediction failed")
		return "", ErrMalformedResponse
	}

	return r.PredictedDepartment, nil
}

// PredictTravelTime returns the predicted travel time in minutes for a
// driving distance starting at from
func (p *predictor) PredictTravelTime(ctx context.Context, from schema.Location, distanceKm float64) (int, error) {
	var r travelTimeResponse
	if err := p.caller.Do(ctx, "calculate_time", func(ctx context.Context) error {
		return p.post(ctx, calculateTimePath, travelTimeRequest{
			StartLat: from.Latitude,
			StartLon: from.Longitude,
			Distance: distanceKm,
		}, &r)
	}); err != nil {
		return 0, err
	}

	if r.Error != "" || r.EstimatedTime == nil {
		return 0, ErrMalformedResponse
	}

	return *r.EstimatedTime, nil
}

func (p *predictor) post(ctx context.Context, path string, body, result interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return upstream.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+path, bytes.NewReader(b))
	if err != nil {
		return upstream.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, path)
		if resp.StatusCode < http.StatusInternalServerError {
			return upstream.Permanent(err)
		}
		return err
	}

	if err := json.Unmarshal(d, result); err != nil {
		return upstream.Permanent(fmt.Errorf("%w: %s", ErrMalformedResponse, err))
	}

	return nil
}

// New - new Predictor for the service at url
func New(url, token string, client *http.Client, caller *upstream.Caller) Predictor {
	if client == nil {
		client = http.DefaultClient
	}
	if caller == nil {
		caller = upstream.NewCaller(upstream.Config{}, nil)
	}

	return &predictor{
		url:    strings.TrimRight(url, "/"),
		token:  token,
		client: client,
		caller: caller,
	}
}
