package cmdlet

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/cockroachdb/errors"
)

// InstanceIDs reduces instance ids, instances and reservations, given by
// value, by pointer or in slices, to the list of instance ids. Order is kept.
func InstanceIDs(values []any) ([]string, error) {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		var err error
		if ids, err = appendInstanceIDs(ids, v); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func appendInstanceIDs(ids []string, v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return nil, errors.New("empty instance id")
		}
		return append(ids, v), nil
	case *string:
		return appendInstanceIDs(ids, aws.StringValue(v))
	case []string:
		for _, id := range v {
			var err error
			if ids, err = appendInstanceIDs(ids, id); err != nil {
				return nil, err
			}
		}
		return ids, nil
	case ec2.Instance:
		return appendInstanceIDs(ids, v.InstanceId)
	case *ec2.Instance:
		if v == nil {
			return nil, errors.New("nil instance")
		}
		return appendInstanceIDs(ids, v.InstanceId)
	case ec2.Reservation:
		return appendInstanceIDs(ids, v.Instances)
	case *ec2.Reservation:
		if v == nil {
			return nil, errors.New("nil reservation")
		}
		return appendInstanceIDs(ids, v.Instances)
	case []*ec2.Instance:
		return appendEach(ids, v)
	case []*ec2.Reservation:
		return appendEach(ids, v)
	case []any:
		return appendEach(ids, v)
	default:
		return nil, errors.Newf("cannot use %T as instance id", v)
	}
}

func appendEach[T any](ids []string, values []T) ([]string, error) {
	for _, v := range values {
		var err error
		if ids, err = appendInstanceIDs(ids, v); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
