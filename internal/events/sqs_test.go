package events

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSPublisherSendsEncodedEvent(t *testing.T) {
	fake := &fakeSQS{}
	p := &SQSPublisher{client: fake, queueURL: "https://sqs.us-east-1.amazonaws.com/1/prep-events"}

	evt := New(TypeResumeTailored, "tailored-resumes/1700000000000-engineer.json")
	if err := p.Publish(context.Background(), evt); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if fake.input == nil {
		t.Fatalf("expected SendMessage call")
	}
	if aws.ToString(fake.input.QueueUrl) != p.queueURL {
		t.Fatalf("unexpected queue url %q", aws.ToString(fake.input.QueueUrl))
	}
	got, err := Decode([]byte(aws.ToString(fake.input.MessageBody)))
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Type != TypeResumeTailored || got.ObjectKey != evt.ObjectKey || got.Version != 1 {
		t.Fatalf("unexpected event %+v", got)
	}
	if attr := fake.input.MessageAttributes["eventType"]; aws.ToString(attr.StringValue) != TypeResumeTailored {
		t.Fatalf("expected eventType attribute")
	}
}

func TestSQSPublisherWrapsSendError(t *testing.T) {
	sendErr := errors.New("throttled")
	p := &SQSPublisher{client: &fakeSQS{err: sendErr}, queueURL: "q"}
	err := p.Publish(context.Background(), New(TypeResumeParsed, "parsed-resumes/1-a.json"))
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestEncodeRequiresTypeAndKey(t *testing.T) {
	if _, err := Encode(Event{Type: TypeResumeParsed}); err == nil {
		t.Fatalf("expected error for missing object key")
	}
}

func TestNewSQSPublisherRequiresQueueURL(t *testing.T) {
	if _, err := NewSQSPublisher(context.Background(), SQSOptions{}); err == nil {
		t.Fatalf("expected error for empty queue url")
	}
}
