// Package domain implements the allocation workflow engine: applicant
// eligibility, application and officer-registration state machines, flat
// booking against project inventory, withdrawal cascades, and the project
// lifecycle with its deletion cleanup.
//
// Every operation validates before it mutates, so a failed call leaves the
// entity graph untouched. The request records written by the workflow are the
// durable audit trail; the cached status fields on applicants, officers, and
// projects are updated in the same call site that decides each request.
package domain
