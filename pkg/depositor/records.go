package depositor

import (
	"context"

	"github.com/psdi-data/depositor/pkg/invenio"
)

// ListRecords returns the raw listing of all records in the repository.
func (d *Depositor) ListRecords(ctx context.Context, opts RepositoryOptions) (any, error) {
	repo, err := d.repository(opts)
	if err != nil {
		return nil, err
	}
	return repo.Records().List(ctx)
}

// GetRecord fetches one record by id.
func (d *Depositor) GetRecord(ctx context.Context, opts RepositoryOptions, recID string) (invenio.Document, error) {
	repo, err := d.repository(opts)
	if err != nil {
		return nil, err
	}
	return repo.Records().Get(ctx, recID)
}

// DownloadRecord downloads every file of a record into dest.
func (d *Depositor) DownloadRecord(ctx context.Context, opts RepositoryOptions, recID, dest string) error {
	repo, err := d.repository(opts)
	if err != nil {
		return err
	}
	return repo.Records().Record(recID).Files().Download(ctx, dest)
}

// ListLicenses returns the raw license catalog listing.
func (d *Depositor) ListLicenses(ctx context.Context, opts RepositoryOptions) (any, error) {
	repo, err := d.repository(opts)
	if err != nil {
		return nil, err
	}
	return repo.Licenses().List(ctx)
}

// GetLicense fetches one license by id.
func (d *Depositor) GetLicense(ctx context.Context, opts RepositoryOptions, licenseID string) (invenio.Document, error) {
	repo, err := d.repository(opts)
	if err != nil {
		return nil, err
	}
	return repo.Licenses().Get(ctx, licenseID)
}
