package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vitistack/common/pkg/loggers/vlog"

	"github.com/vitistack/vyos-dhcp-operator/internal/util/macaddr"
	"github.com/vitistack/vyos-dhcp-operator/internal/util/subnet"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// mappingNamePattern matches the static-mapping names VyOS accepts, which
// include underscores unlike RFC 1123 hostnames.
var mappingNamePattern = regexp.MustCompile(`^[-_a-zA-Z0-9.]+$`)

func validateMappingName(fl validator.FieldLevel) bool {
	return mappingNamePattern.MatchString(fl.Field().String())
}

var errMissingParameters = vyosmodels.NewError(vyosmodels.KindValidationError, "Missing required parameters")

type reserveRequest struct {
	Pool       string `json:"pool" validate:"required"`
	Subnet     string `json:"subnet" validate:"required,cidrv4"`
	Hostname   string `json:"hostname" validate:"required,mappingname"`
	IPAddress  string `json:"ipAddress" validate:"required,ipv4"`
	MACAddress string `json:"macAddress" validate:"required,mac"`
}

type deleteMappingRequest struct {
	Pool     string `json:"pool" validate:"required"`
	Subnet   string `json:"subnet" validate:"required,cidrv4"`
	Hostname string `json:"hostname" validate:"required,mappingname"`
	// IPAddress only derives a hostname when none is given.
	IPAddress string `json:"ipAddress,omitempty"`
}

func (a *API) handleLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := a.service.GetLeases(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, leases)
}

func (a *API) handleMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := a.service.GetStaticMappings(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mappings)
}

func (a *API) handleReserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Subnet = a.subnetOrDefault(req.Subnet)
	req.Hostname = hostnameOrDefault(req.Hostname, req.IPAddress)
	if err := a.check(req); err != nil {
		a.fail(w, r, err)
		return
	}

	mac, err := macaddr.Normalize(req.MACAddress)
	if err != nil {
		a.fail(w, r, vyosmodels.NewError(vyosmodels.KindValidationError, err.Error()))
		return
	}
	network, err := subnet.Normalize(req.Subnet)
	if err != nil {
		a.fail(w, r, vyosmodels.NewError(vyosmodels.KindValidationError, err.Error()))
		return
	}
	if ok, err := subnet.Contains(network, req.IPAddress); err != nil || !ok {
		a.fail(w, r, vyosmodels.NewError(vyosmodels.KindValidationError,
			fmt.Sprintf("ipAddress %s is not within subnet %s", req.IPAddress, network)))
		return
	}

	resp, err := a.service.SetStaticMapping(r.Context(), req.Pool, network, req.Hostname, req.IPAddress, mac)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp.Data)
}

func (a *API) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	var req deleteMappingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Subnet = a.subnetOrDefault(req.Subnet)
	req.Hostname = hostnameOrDefault(req.Hostname, req.IPAddress)
	if err := a.check(req); err != nil {
		a.fail(w, r, err)
		return
	}
	network, err := subnet.Normalize(req.Subnet)
	if err != nil {
		a.fail(w, r, vyosmodels.NewError(vyosmodels.KindValidationError, err.Error()))
		return
	}

	resp, err := a.service.DeleteStaticMapping(r.Context(), req.Pool, network, req.Hostname)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp.Data)
}

// check validates req and reports missing fields before malformed ones.
func (a *API) check(req any) error {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return vyosmodels.NewError(vyosmodels.KindValidationError, err.Error())
	}
	invalid := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return errMissingParameters
		}
		invalid = append(invalid, fe.Field())
	}
	return vyosmodels.NewError(vyosmodels.KindValidationError, "Invalid parameters: "+strings.Join(invalid, ", "))
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	if vyosmodels.KindOf(err) == vyosmodels.KindValidationError {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	vlog.Error("vyos request failed", "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, err)
}

func (a *API) subnetOrDefault(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return a.config.DefaultSubnet
}

// hostnameOrDefault names unnamed mappings host-<ip>.
func hostnameOrDefault(hostname, ip string) string {
	if hostname = strings.TrimSpace(hostname); hostname != "" {
		return hostname
	}
	if ip = strings.TrimSpace(ip); ip != "" {
		return "host-" + ip
	}
	return ""
}
