package usecases

import (
	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// DescriptionRenderer turns a markdown description into sanitized HTML.
type DescriptionRenderer interface {
	Render(markdown string) (string, error)
}

// presenter builds package responses with the rendered description attached.
// A rendering failure leaves description_html empty.
type presenter struct {
	renderer DescriptionRenderer
	logger   logger.Interface
}

func (p presenter) present(pkg *servicepackage.ServicePackage) *dto.PackageResponse {
	resp := dto.ToPackageResponse(pkg)
	if resp == nil || p.renderer == nil {
		return resp
	}
	html, err := p.renderer.Render(pkg.Description())
	if err != nil {
		p.logger.Warnw("failed to render package description", "error", err, "package_id", pkg.ID())
		return resp
	}
	resp.DescriptionHTML = html
	return resp
}

func (p presenter) presentAll(list []*servicepackage.ServicePackage) []*dto.PackageResponse {
	out := make([]*dto.PackageResponse, 0, len(list))
	for _, pkg := range list {
		out = append(out, p.present(pkg))
	}
	return out
}
